package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type sampleRequest struct {
	Title     string  `json:"title" validate:"required,min=1,max=10"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Status    string  `json:"status" validate:"omitempty,oneof=Open Completed"`
}

func TestValidateStruct_ReportsJSONFieldNames(t *testing.T) {
	bad := "15/01/2024"
	err := ValidateStruct(&sampleRequest{StartDate: &bad, Status: "Done"})
	if err == nil {
		t.Fatal("Expected validation error")
	}

	fields := GetValidationErrors(err)
	for _, field := range []string{"title", "start_date", "status"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("Expected error for field %q, got %v", field, fields)
		}
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	date := "2024-01-15"
	if err := ValidateStruct(&sampleRequest{Title: "Write docs", StartDate: &date, Status: "Open"}); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}
}

type clearableRequest struct {
	EndDate *string `json:"endDate" validate:"omitempty,eq=|datetime=2006-01-02"`
}

func TestValidateStruct_EmptyPointerClears(t *testing.T) {
	empty := ""
	if err := ValidateStruct(&clearableRequest{EndDate: &empty}); err != nil {
		t.Errorf("Expected empty string to be accepted, got %v", err)
	}
	if err := ValidateStruct(&clearableRequest{}); err != nil {
		t.Errorf("Expected omitted field to be accepted, got %v", err)
	}

	bad := "tomorrow"
	err := ValidateStruct(&clearableRequest{EndDate: &bad})
	if err == nil {
		t.Fatal("Expected malformed date to be rejected")
	}
	if msg := GetValidationErrors(err)["endDate"]; msg != "must be empty or a date in 2006-01-02 format" {
		t.Errorf("Unexpected message %q", msg)
	}
}

func TestGetValidationErrors_NonValidatorError(t *testing.T) {
	fields := GetValidationErrors(errors.New("boom"))
	if fields["_"] != "boom" {
		t.Errorf("Expected generic error under \"_\", got %v", fields)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-01")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !d.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected date %v", d)
	}

	empty, err := ParseDate("")
	if err != nil || empty != nil {
		t.Errorf("Expected empty string to parse as unset, got %v, %v", empty, err)
	}

	if _, err := ParseDate("2024/02/01"); err == nil {
		t.Errorf("Expected error for malformed date")
	}

	if got := FormatDate(d); got == nil || *got != "2024-02-01" {
		t.Errorf("Unexpected formatted date %v", got)
	}
	if FormatDate(nil) != nil {
		t.Errorf("Expected nil date to format as nil")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	user := UserContext{ID: uuid.New(), Username: "manager", Email: "manager@example.com", Role: "task_manager"}

	token, err := GenerateToken(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	got, err := ValidateTokenStringToUUID("Bearer "+token, "secret")
	if err != nil {
		t.Fatalf("ValidateTokenStringToUUID failed: %v", err)
	}
	if *got != user {
		t.Errorf("Expected %+v, got %+v", user, *got)
	}

	if _, err := ValidateTokenStringToUUID(token, "other-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken(UserContext{ID: uuid.New()}, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := ValidateTokenStringToUUID(token, "secret"); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Expected ErrExpiredToken, got %v", err)
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	if got := ExtractTokenFromHeader("Bearer abc"); got != "abc" {
		t.Errorf("Expected abc, got %q", got)
	}
	if got := ExtractTokenFromHeader("Basic abc"); got != "" {
		t.Errorf("Expected empty token for non-bearer header, got %q", got)
	}
}
