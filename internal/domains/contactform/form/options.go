package form

import (
	"strconv"
	"strings"

	"bayleaf/internal/domains/contactform/model/dto"
	"bayleaf/internal/domains/reservation/model"
	"bayleaf/shared/timezone"

	"golang.org/x/text/language"
)

// Options describes the selectable values of the form in the given language.
func Options(tag language.Tag, contactPhone, contactEmail string) dto.OptionsResponse {
	messages := MessagesFor(tag)

	slots := make([]dto.TimeSlotOption, 0, len(model.TimeSlots))
	for _, slot := range model.TimeSlots {
		hour, minute, _ := strings.Cut(slot, ":")
		h, _ := strconv.Atoi(hour)
		m, _ := strconv.Atoi(minute)

		slots = append(slots, dto.TimeSlotOption{Value: slot, Label: messages.DisplayHour(h, m)})
	}

	guests := make([]dto.GuestOption, 0, model.MaxGuests+1)
	for n := model.MinGuests; n <= model.MaxGuests; n++ {
		guests = append(guests, dto.GuestOption{Value: strconv.Itoa(n), Label: messages.guestLabel(n)})
	}

	guests = append(guests, dto.GuestOption{
		Value: LargeParty,
		Label: LargeParty + " " + messages.People + " (" + messages.CallToBook + ")",
	})

	return dto.OptionsResponse{
		TimeSlots:    slots,
		Guests:       guests,
		Defaults:     map[string]string{string(FieldGuests): DefaultGuests},
		ContactPhone: contactPhone,
		ContactEmail: contactEmail,
		MinDate:      timezone.Today(),
		Language:     tag.String(),
	}
}
