package validate_test

import (
	"testing"

	"github.com/fennwick/brasserie/pkg/validate"
)

type registerInput struct {
	Username        string `json:"username"         validate:"required,alpha_dash,min=3,max=100"`
	Email           string `json:"email"            validate:"nullable,email"`
	Password        string `json:"password"         validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,confirmed"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Username:        "head_chef",
		Email:           "chef@example.com",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["username"]; !ok {
		t.Error("expected username to be required")
	}
	if _, ok := errs["password"]; !ok {
		t.Error("expected password to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gte=1,lte=100"`
	}
	if errs := validate.Struct(in{Quantity: 200}); !validate.HasErrors(errs) {
		t.Error("expected quantity > 100 to fail")
	}
	if errs := validate.Struct(in{Quantity: 3}); validate.HasErrors(errs) {
		t.Errorf("expected quantity 3 to pass, got: %v", errs)
	}
}

func TestInRuleWithMultiValueParams(t *testing.T) {
	type in struct {
		Method string `json:"method" validate:"required,in=cash,card,paypal,max=20"`
	}
	if errs := validate.Struct(in{Method: "cheque"}); !validate.HasErrors(errs) {
		t.Error("expected invalid method to fail")
	}
	if errs := validate.Struct(in{Method: "card"}); validate.HasErrors(errs) {
		t.Errorf("expected card to pass: %v", errs)
	}
}

func TestConfirmedRule(t *testing.T) {
	type in struct {
		Password        string `json:"password"         validate:"required,min=6"`
		PasswordConfirm string `json:"password_confirm" validate:"confirmed"`
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirm: "wrong"}); !validate.HasErrors(errs) {
		t.Error("expected confirmation mismatch to fail")
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirm: "secret123"}); validate.HasErrors(errs) {
		t.Errorf("expected matching confirmation to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"nullable,email"`
	}
	// Empty string — nullable, should pass even though it's not an email
	if errs := validate.Struct(in{Email: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	// Non-empty but invalid — should fail
	if errs := validate.Struct(in{Email: "nope"}); !validate.HasErrors(errs) {
		t.Error("expected invalid email to fail")
	}
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,between=0.5,100"`
	}
	if errs := validate.Struct(in{Price: 150}); !validate.HasErrors(errs) {
		t.Error("expected price > 100 to fail")
	}
	if errs := validate.Struct(in{Price: 9.99}); validate.HasErrors(errs) {
		t.Errorf("expected price 9.99 to pass: %v", errs)
	}
}

func TestDateRule(t *testing.T) {
	type in struct {
		Placed string `json:"placed" validate:"required,date"`
	}
	if errs := validate.Struct(in{Placed: "2026-03-01"}); validate.HasErrors(errs) {
		t.Errorf("expected valid date to pass: %v", errs)
	}
	if errs := validate.Struct(in{Placed: "yesterday-ish"}); !validate.HasErrors(errs) {
		t.Error("expected invalid date to fail")
	}
}

func TestAlphaDashRule(t *testing.T) {
	type in struct {
		Username string `json:"username" validate:"required,alpha_dash"`
	}
	if errs := validate.Struct(in{Username: "head-chef_01"}); validate.HasErrors(errs) {
		t.Errorf("expected alpha_dash to pass: %v", errs)
	}
	if errs := validate.Struct(in{Username: "head chef!"}); !validate.HasErrors(errs) {
		t.Error("expected alpha_dash to fail for spaces/punctuation")
	}
}
