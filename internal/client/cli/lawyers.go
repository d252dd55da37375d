package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/lawlink/internal/client/api"
	"github.com/dmitrijs2005/lawlink/internal/client/models"
)

// consultationTimeLayout is the format users enter the consultation slot in.
const consultationTimeLayout = "2006-01-02 15:04"

// ShowLawyer fetches and prints a lawyer's public profile, including whether
// the current client has already rated them.
func (a *App) ShowLawyer(ctx context.Context) error {
	id, err := GetID(a.reader, "Enter lawyer id", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	lawyer, err := a.client.Lawyer(ctx, id)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Printf("%s <%s>\n", lawyer.Username, lawyer.Email)
	fmt.Printf("Specialization: %s\n", lawyer.Specialization)
	fmt.Printf("Phone: %s\n", lawyer.PhoneNumber)
	fmt.Printf("Address: %s\n", lawyer.Address)
	fmt.Printf("Bar registration: %s\n", lawyer.BarRegistrationNumber)
	fmt.Printf("Status: %s\n", lawyer.VerificationStatus)
	fmt.Printf("Average rating: %.1f\n", lawyer.AverageRating)

	rated, err := a.client.HasRated(ctx, id)
	if err == nil && rated {
		fmt.Println("You have already rated this lawyer.")
	}
	return nil
}

// Enquire sends a new enquiry with a free-form case description to the
// chosen lawyer.
func (a *App) Enquire(ctx context.Context) error {
	lawyerID, err := GetID(a.reader, "Enter lawyer id", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	description, err := GetMultiline(a.reader, "Describe your case:", os.Stdout)
	if err != nil {
		return err
	}
	if description == "" {
		fmt.Println("Case description is required")
		return fmt.Errorf("case description is required")
	}

	enquiry, err := a.client.CreateEnquiry(ctx, api.EnquiryParams{
		UserID:          a.sessions.Current().Identity.ID,
		LawyerID:        lawyerID,
		CaseDescription: description,
	})
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Printf("Enquiry #%d sent (status: %s)\n", enquiry.ID, enquiry.Status)
	return nil
}

// Book schedules a consultation with a lawyer. The slot must lie in the
// future.
func (a *App) Book(ctx context.Context) error {
	lawyerID, err := GetID(a.reader, "Enter lawyer id", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}
	when, err := getSimpleText(a.reader, "Enter date and time (YYYY-MM-DD HH:MM)", os.Stdout)
	if err != nil {
		return err
	}
	scheduled, err := time.ParseInLocation(consultationTimeLayout, when, time.Local)
	if err != nil {
		fmt.Printf("%q is not a valid date, expected YYYY-MM-DD HH:MM\n", when)
		return err
	}
	if !scheduled.After(time.Now()) {
		fmt.Println("Consultation must be scheduled in the future")
		return fmt.Errorf("consultation time %s is in the past", when)
	}
	durationText, err := getSimpleText(a.reader, "Enter duration in minutes", os.Stdout)
	if err != nil {
		return err
	}
	duration, err := strconv.Atoi(durationText)
	if err != nil || duration <= 0 {
		fmt.Println("Duration must be a positive number of minutes")
		return fmt.Errorf("invalid duration %q", durationText)
	}
	location, err := getSimpleText(a.reader, "Enter location (empty for online)", os.Stdout)
	if err != nil {
		return err
	}
	link, err := getSimpleText(a.reader, "Enter meeting link (optional)", os.Stdout)
	if err != nil {
		return err
	}

	consultation, err := a.client.CreateConsultation(ctx, api.ConsultationParams{
		ClientID:          a.sessions.Current().Identity.ID,
		LawyerID:          lawyerID,
		Title:             title,
		Description:       description,
		ScheduledDateTime: scheduled,
		DurationMinutes:   duration,
		Location:          location,
		MeetingLink:       link,
		Status:            "Pending",
	})
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Printf("Consultation #%d booked for %s\n", consultation.ID,
		consultation.ScheduledDateTime.Format(consultationTimeLayout))
	return nil
}

// Rate submits a 1-5 rating with an optional comment. A lawyer can be rated
// once per client.
func (a *App) Rate(ctx context.Context) error {
	lawyerID, err := GetID(a.reader, "Enter lawyer id", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	rated, err := a.client.HasRated(ctx, lawyerID)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}
	if rated {
		fmt.Println("You have already rated this lawyer")
		return nil
	}

	valueText, err := getSimpleText(a.reader, "Enter rating (1-5)", os.Stdout)
	if err != nil {
		return err
	}
	value, err := strconv.Atoi(valueText)
	if err != nil || value < 1 || value > 5 {
		fmt.Println("Rating must be a number between 1 and 5")
		return fmt.Errorf("invalid rating %q", valueText)
	}
	comment, err := getSimpleText(a.reader, "Enter comment (optional)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.CreateRating(ctx, models.Rating{
		LawyerID:    lawyerID,
		RatingValue: value,
		Comment:     comment,
	}); err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Println("Thank you for your feedback!")
	return nil
}
