package validate

import (
	"testing"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
)

type patientForm struct {
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"required,max=100"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
	Priority  int     `json:"priority" validate:"gte=0,lte=1000"`
}

func strPtr(s string) *string { return &s }

func TestStructValid(t *testing.T) {
	va := New(config.ValidationConfig{PhoneRegion: "GB"})

	form := patientForm{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     strPtr("jane@example.com"),
		Phone:     strPtr("+447911123456"),
		Priority:  10,
	}
	if err := va.Struct(form); err != nil {
		t.Fatalf("Struct() error = %v, want nil", err)
	}
}

func TestStructFieldErrors(t *testing.T) {
	va := New(config.ValidationConfig{PhoneRegion: "GB"})

	tests := []struct {
		name      string
		form      patientForm
		wantField string
	}{
		{
			name:      "missing first name",
			form:      patientForm{LastName: "Doe"},
			wantField: "firstName",
		},
		{
			name:      "bad email",
			form:      patientForm{FirstName: "Jane", LastName: "Doe", Email: strPtr("not-an-email")},
			wantField: "email",
		},
		{
			name:      "bad phone",
			form:      patientForm{FirstName: "Jane", LastName: "Doe", Phone: strPtr("12")},
			wantField: "phone",
		},
		{
			name:      "priority out of range",
			form:      patientForm{FirstName: "Jane", LastName: "Doe", Priority: 5000},
			wantField: "priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := va.Struct(tt.form)
			if err == nil {
				t.Fatal("Struct() = nil, want error")
			}
			verrs, ok := AsErrors(err)
			if !ok {
				t.Fatalf("Struct() error type = %T, want Errors", err)
			}
			found := false
			for _, fe := range verrs {
				if fe.Field == tt.wantField {
					found = true
					if fe.Message == "" {
						t.Errorf("field %q has empty message", fe.Field)
					}
				}
			}
			if !found {
				t.Errorf("Struct() errors = %v, want field %q", verrs, tt.wantField)
			}
		})
	}
}

func TestStructJSONFieldNames(t *testing.T) {
	va := New(config.ValidationConfig{})

	err := va.Struct(patientForm{})
	verrs, ok := AsErrors(err)
	if !ok {
		t.Fatalf("Struct() error type = %T, want Errors", err)
	}
	for _, fe := range verrs {
		// json names are camelCase in the form above
		if fe.Field == "FirstName" || fe.Field == "LastName" {
			t.Errorf("field name %q not taken from json tag", fe.Field)
		}
	}
}

func TestPhoneRegionFallback(t *testing.T) {
	va := New(config.ValidationConfig{PhoneRegion: "GB"})

	// National format resolves against the configured region
	form := patientForm{FirstName: "Jane", LastName: "Doe", Phone: strPtr("07911123456")}
	if err := va.Struct(form); err != nil {
		t.Fatalf("Struct() national number error = %v, want nil", err)
	}
}

func TestErrorsError(t *testing.T) {
	e := Errors{{Field: "email", Message: "is required"}}
	want := "validation failed: email is required"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}

	var empty Errors
	if empty.Error() != "validation failed" {
		t.Errorf("empty Error() = %q", empty.Error())
	}
}
