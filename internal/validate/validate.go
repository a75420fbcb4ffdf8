// Package validate checks form input before any request is made.
// Validation failures never reach the network.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps struct field names to user-facing messages.
type FieldErrors map[string]string

// RegisterForm is the new-account form.
type RegisterForm struct {
	Username string `validate:"min=3,max=40"`
	Email    string `validate:"email,min=3,max=80"`
	Password string `validate:"min=3,max=80"`
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string `validate:"min=12,max=80"`
	Password string `validate:"min=3,max=80"`
}

// UpdateUserForm is the profile edit form.
type UpdateUserForm struct {
	Username string `validate:"min=3,max=40"`
}

// UpdatePasswordForm is the password change form.
type UpdatePasswordForm struct {
	CurrentPassword      string `validate:"min=3,max=80"`
	NewPassword          string `validate:"min=3,max=80"`
	ConfirmationPassword string `validate:"min=3,max=80"`
}

// ArtistForm is the artist create/edit form. Genres is a
// comma-separated list.
type ArtistForm struct {
	Name          string `validate:"min=2,max=80"`
	OriginCountry string `validate:"min=3,max=80"`
	FormedYear    int    `validate:"pastyear"`
	Genres        string `validate:"omitempty,genrelist"`
}

// AlbumForm is the album create/edit form. ReleaseDate is unix seconds.
type AlbumForm struct {
	Title       string `validate:"min=2,max=80"`
	ReleaseDate int64  `validate:"omitempty,notfuture"`
	Genres      string `validate:"omitempty,genrelist"`
}

// ListForm is the album list create/rename form.
type ListForm struct {
	Name string `validate:"min=3,max=80"`
}

// ReviewForm is the review create/edit form.
type ReviewForm struct {
	Title   string  `validate:"min=3,max=120"`
	Content string  `validate:"min=6"`
	Rating  float64 `validate:"min=0.5,max=5"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("genrelist", validGenreList)
	v.RegisterValidation("pastyear", pastYear)
	v.RegisterValidation("notfuture", notFuture)
	return v
}

// Struct validates a form and returns nil when it passes. Only the
// first failure per field is reported.
func Struct(form interface{}) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": "Invalid input."}
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, ok := fields[fe.Field()]; !ok {
			fields[fe.Field()] = message(fe)
		}
	}
	return fields
}

// validGenreList accepts "Rock, Post-Punk" style lists, rejecting empty
// segments and trailing separators.
func validGenreList(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return !strings.Contains(s, ", ,") && !strings.HasSuffix(s, ", ")
}

func pastYear(fl validator.FieldLevel) bool {
	return fl.Field().Int() <= int64(time.Now().Year())
}

func notFuture(fl validator.FieldLevel) bool {
	return fl.Field().Int() <= time.Now().Unix()
}

// labels are the user-facing field names used in messages.
var labels = map[string]string{
	"Username":             "Username",
	"Email":                "Email",
	"Password":             "Password",
	"CurrentPassword":      "Current password",
	"NewPassword":          "New password",
	"ConfirmationPassword": "Confirmation password",
	"Name":                 "Name",
	"OriginCountry":        "Origin Country",
	"FormedYear":           "Formed year",
	"Title":                "Title",
	"ReleaseDate":          "Release date",
	"Content":              "Content",
	"Rating":               "Rating",
}

func message(fe validator.FieldError) string {
	label := labels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "email":
		return "Email is not valid."
	case "genrelist":
		return "Invalid genres format."
	case "pastyear":
		return "Formed year must be less than or equal to the current year."
	case "notfuture":
		return "Release date must not be in the future."
	case "min", "max":
		if fe.Field() == "Rating" {
			return "Rating is required and must be between 0.5 and 5.0"
		}
		if fe.Tag() == "min" {
			return fmt.Sprintf("%s must be at least %s characters long.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters long.", label, fe.Param())
	default:
		return "Invalid input."
	}
}
