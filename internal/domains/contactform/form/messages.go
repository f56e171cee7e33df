package form

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
)

// Messages are the banner texts of one language. LargeParty takes the contact phone.
type Messages struct {
	Required   string
	LargeParty string
	Success    string
	Failure    string
	Invalid    string
	Timeout    string

	Person      string
	People      string
	CallToBook  string
	DisplayHour func(hour, minute int) string
}

// Supported languages, the first one is the fallback.
var Supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(Supported)

var catalog = map[language.Tag]Messages{
	language.English: {
		Required:   "Please fill in all required fields.",
		LargeParty: "For parties of 9 or more guests, please call us at %s.",
		Success:    "Your reservation has been submitted successfully! We will contact you soon to confirm.",
		Failure:    "There was an error submitting your reservation. Please try again or call us directly.",
		Invalid:    "Some of your details were not accepted. Please check your entries and try again.",
		Timeout:    "Your reservation request timed out. Please try again or call us directly.",
		Person:     "person",
		People:     "people",
		CallToBook: "please call",
		DisplayHour: func(hour, minute int) string {
			suffix := "AM"
			if hour >= 12 {
				suffix = "PM"
			}

			display := hour % 12
			if display == 0 {
				display = 12
			}

			return fmt.Sprintf("%d:%02d %s", display, minute, suffix)
		},
	},
	language.German: {
		Required:   "Bitte füllen Sie alle Pflichtfelder aus.",
		LargeParty: "Für Gruppen ab 9 Personen rufen Sie uns bitte unter %s an.",
		Success:    "Ihre Reservierung wurde erfolgreich übermittelt! Wir werden Sie bald kontaktieren, um zu bestätigen.",
		Failure:    "Beim Übermitteln Ihrer Reservierung ist ein Fehler aufgetreten. Bitte versuchen Sie es erneut oder rufen Sie uns direkt an.",
		Invalid:    "Einige Ihrer Angaben wurden nicht akzeptiert. Bitte prüfen Sie Ihre Eingaben und versuchen Sie es erneut.",
		Timeout:    "Ihre Reservierungsanfrage hat zu lange gedauert. Bitte versuchen Sie es erneut oder rufen Sie uns direkt an.",
		Person:     "Person",
		People:     "Personen",
		CallToBook: "bitte anrufen",
		DisplayHour: func(hour, minute int) string {
			return fmt.Sprintf("%02d:%02d Uhr", hour, minute)
		},
	},
}

// Negotiate picks a supported language. An explicit lang wins over the Accept-Language header.
func Negotiate(lang, acceptLanguage string) language.Tag {
	_, index := language.MatchStrings(matcher, lang, acceptLanguage)

	return Supported[index]
}

func MessagesFor(tag language.Tag) Messages {
	if messages, ok := catalog[tag]; ok {
		return messages
	}

	return catalog[Supported[0]]
}

func (m Messages) guestLabel(guests int) string {
	if guests == 1 {
		return "1 " + m.Person
	}

	return strconv.Itoa(guests) + " " + m.People
}
