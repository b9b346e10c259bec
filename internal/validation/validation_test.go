package validation

import (
	"reflect"
	"strings"
	"testing"
)

func validContact() map[string]any {
	return map[string]any{
		"name":    "Al",
		"email":   "a@b.com",
		"subject": "Hi",
		"message": "Hello",
	}
}

func validOrder() map[string]any {
	return map[string]any{
		"name":    "Sara",
		"email":   "sara@example.com",
		"service": "Portrait",
		"details": "0123456789",
	}
}

// ---------------------------------------------------------------------------
// ValidateContact
// ---------------------------------------------------------------------------

func TestValidateContact_Valid(t *testing.T) {
	msg, fe := ValidateContact(validContact())
	if fe != nil {
		t.Fatalf("expected no errors, got %v", fe)
	}
	if msg.Name != "Al" || msg.Email != "a@b.com" || msg.Subject != "Hi" || msg.Message != "Hello" {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestValidateContact_AllFieldsInvalid(t *testing.T) {
	msg, fe := ValidateContact(map[string]any{
		"name":    "A",
		"email":   "bad",
		"subject": "",
		"message": "",
	})
	if msg != nil {
		t.Fatalf("expected nil message, got %+v", msg)
	}
	want := map[string]string{
		"name":    "Name must be at least 2 characters",
		"email":   "Invalid email address",
		"subject": "Subject is required",
		"message": "Message is required",
	}
	for field, m := range want {
		got := fe[field]
		if len(got) != 1 || got[0] != m {
			t.Errorf("%s: expected [%q], got %v", field, m, got)
		}
	}
	if len(fe) != len(want) {
		t.Errorf("expected %d fields, got %v", len(want), fe)
	}
}

func TestValidateContact_ShortNameDoesNotHideOtherErrors(t *testing.T) {
	in := validContact()
	in["name"] = "A"
	in["email"] = "nope"
	_, fe := ValidateContact(in)
	if _, ok := fe["name"]; !ok {
		t.Error("expected name error")
	}
	if _, ok := fe["email"]; !ok {
		t.Error("expected email error alongside name error")
	}
	if _, ok := fe["subject"]; ok {
		t.Error("valid subject should not be reported")
	}
}

func TestValidateContact_MissingFields(t *testing.T) {
	_, fe := ValidateContact(map[string]any{})
	for _, field := range []string{"name", "email", "subject", "message"} {
		if got := fe[field]; len(got) != 1 || got[0] != "Required" {
			t.Errorf("%s: expected [Required], got %v", field, got)
		}
	}
}

func TestValidateContact_WrongType(t *testing.T) {
	in := validContact()
	in["name"] = 42.0
	in["message"] = nil
	_, fe := ValidateContact(in)
	if got := fe["name"]; len(got) != 1 || got[0] != "Expected string, received number" {
		t.Errorf("name: unexpected %v", got)
	}
	if got := fe["message"]; len(got) != 1 || got[0] != "Expected string, received null" {
		t.Errorf("message: unexpected %v", got)
	}
}

func TestValidateContact_Email(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"a@b.com", true},
		{"first.last@studio.example.org", true},
		{"bad", false},
		{"missing-domain@", false},
		{"@missing-local.com", false},
		{"", false},
	}
	for _, tt := range tests {
		in := validContact()
		in["email"] = tt.email
		_, fe := ValidateContact(in)
		_, failed := fe["email"]
		if failed == tt.ok {
			t.Errorf("email %q: expected ok=%v, got errors %v", tt.email, tt.ok, fe)
		}
	}
}

func TestValidateContact_Idempotent(t *testing.T) {
	in := map[string]any{"name": "A", "email": "x", "subject": 1.0}
	_, first := ValidateContact(in)
	_, second := ValidateContact(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical errors, got %v and %v", first, second)
	}
}

// ---------------------------------------------------------------------------
// ValidateOrder
// ---------------------------------------------------------------------------

func TestValidateOrder_DetailsBoundary(t *testing.T) {
	in := validOrder()
	in["details"] = strings.Repeat("x", 10)
	if _, fe := ValidateOrder(in); fe != nil {
		t.Errorf("expected 10 chars to pass, got %v", fe)
	}

	in["details"] = strings.Repeat("x", 9)
	_, fe := ValidateOrder(in)
	if got := fe["details"]; len(got) != 1 || got[0] != "Please provide more details about your project" {
		t.Errorf("expected details error for 9 chars, got %v", got)
	}
}

func TestValidateOrder_LengthsCountCodePoints(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		// 2 bytes, 1 code point
		{"one accented name", "name", "é", true},
		{"two accented name", "name", "éé", false},
		// 10 bytes, 5 code points
		{"five accented details", "details", "ééééé", true},
		// 27 bytes, 9 code points
		{"nine cjk details", "details", "絵画の依頼です。よ", true},
		{"ten cjk details", "details", "絵画の依頼です。よろ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validOrder()
			in[tt.field] = tt.value
			_, fe := ValidateOrder(in)
			if got := len(fe[tt.field]) > 0; got != tt.wantErr {
				t.Errorf("%s=%q: error=%v, want %v (%v)", tt.field, tt.value, got, tt.wantErr, fe)
			}
		})
	}
}

func TestValidateOrder_OptionalFields(t *testing.T) {
	in := validOrder()
	req, fe := ValidateOrder(in)
	if fe != nil {
		t.Fatalf("unexpected errors: %v", fe)
	}
	if req.Phone != "" || req.Budget != "" || req.HasPhone || req.HasBudget {
		t.Errorf("expected absent optional fields, got %+v", req)
	}

	in["phone"] = "+1 555 0100"
	in["budget"] = ""
	req, fe = ValidateOrder(in)
	if fe != nil {
		t.Fatalf("unexpected errors: %v", fe)
	}
	if req.Phone != "+1 555 0100" || !req.HasPhone {
		t.Errorf("expected phone to be kept, got %q", req.Phone)
	}
	if req.Budget != "" || !req.HasBudget {
		t.Errorf("expected empty budget to be marked as sent, got %+v", req)
	}
}

func TestValidateOrder_OptionalFieldWrongType(t *testing.T) {
	in := validOrder()
	in["budget"] = 500.0
	_, fe := ValidateOrder(in)
	if got := fe["budget"]; len(got) != 1 || got[0] != "Expected string, received number" {
		t.Errorf("budget: unexpected %v", got)
	}
}

func TestValidateOrder_ServiceRequired(t *testing.T) {
	in := validOrder()
	in["service"] = ""
	_, fe := ValidateOrder(in)
	if got := fe["service"]; len(got) != 1 || got[0] != "Please select a service" {
		t.Errorf("service: unexpected %v", got)
	}
}

func TestValidateOrder_NameBoundary(t *testing.T) {
	for _, name := range []string{"", "A"} {
		in := validOrder()
		in["name"] = name
		if _, fe := ValidateOrder(in); len(fe["name"]) == 0 {
			t.Errorf("name %q: expected error", name)
		}
	}
	in := validOrder()
	in["name"] = "Al"
	if _, fe := ValidateOrder(in); fe != nil {
		t.Errorf("name Al: unexpected %v", fe)
	}
}
