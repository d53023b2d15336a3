package validation

import "testing"

func validCustomerForm() Form {
	return Form{
		FirstName:       "Ayesha",
		LastName:        "Khan",
		Email:           "ayesha.khan@gmail.com",
		Password:        "Abc123!@",
		ConfirmPassword: "Abc123!@",
		UserType:        "customer",
	}
}

func validProviderForm() Form {
	form := validCustomerForm()
	form.UserType = "provider"
	form.Email = "sales@gmail.com"
	form.CompanyName = "SunWorks"
	form.RegistrationNumber = "REG-4471"
	form.ContactNumber = "+92-300-1234567"
	form.CompanyAddress = "12 Canal Road, Lahore"
	form.CertificateURL = "https://files.example.com/cert.pdf"
	return form
}

func TestValidateAcceptsCustomerOnPersonalDomains(t *testing.T) {
	for _, domain := range []string{"gmail.com", "yahoo.com", "outlook.com"} {
		form := validCustomerForm()
		form.Email = "someone@" + domain
		if err := Validate(form); err != nil {
			t.Fatalf("expected valid form for domain %s, got %s: %s", domain, err.Code, err.Message)
		}
	}
}

func TestValidateAcceptsProviderForm(t *testing.T) {
	if err := Validate(validProviderForm()); err != nil {
		t.Fatalf("expected valid provider form, got %s: %s", err.Code, err.Message)
	}
}

func TestValidateMissingNameFields(t *testing.T) {
	for _, mutate := range []func(*Form){
		func(f *Form) { f.FirstName = "" },
		func(f *Form) { f.LastName = "   " },
		func(f *Form) { f.Email = "" },
	} {
		form := validCustomerForm()
		mutate(&form)
		err := Validate(form)
		if err == nil || err.Code != CodeMissingField {
			t.Fatalf("expected MissingField, got %+v", err)
		}
	}
}

func TestValidateRejectsMalformedEmail(t *testing.T) {
	for _, email := range []string{"not-an-email", "a@b", "a@b.c", "@gmail.com", "a b@gmail.com"} {
		form := validCustomerForm()
		form.Email = email
		err := Validate(form)
		if err == nil || err.Code != CodeInvalidEmailFormat {
			t.Fatalf("email %q: expected InvalidEmailFormat, got %+v", email, err)
		}
	}
}

func TestValidateRejectsDisallowedTLD(t *testing.T) {
	form := validCustomerForm()
	form.Email = "someone@gmail.info"
	err := Validate(form)
	if err == nil || err.Code != CodeDisallowedTLD {
		t.Fatalf("expected DisallowedTLD, got %+v", err)
	}
}

func TestValidateRejectsUnknownDomainPrefix(t *testing.T) {
	// The rule turns away every domain whose first label is not a known
	// free-mail provider, company domains included.
	for _, email := range []string{"ali@gmial.com", "info@sunworks.com"} {
		form := validProviderForm()
		form.Email = email
		err := Validate(form)
		if err == nil || err.Code != CodeUnrecognizedDomain {
			t.Fatalf("email %q: expected UnrecognizedDomain, got %+v", email, err)
		}
	}
}

func TestValidateCustomerNeedsExactPersonalDomain(t *testing.T) {
	form := validCustomerForm()
	form.Email = "someone@gmail.com.pk"
	err := Validate(form)
	if err == nil || err.Code != CodePersonalEmailRequired {
		t.Fatalf("expected PersonalEmailRequired, got %+v", err)
	}
}

func TestValidateProviderMissingCompanyDetails(t *testing.T) {
	for _, mutate := range []func(*Form){
		func(f *Form) { f.CompanyName = "" },
		func(f *Form) { f.RegistrationNumber = "" },
		func(f *Form) { f.ContactNumber = "" },
		func(f *Form) { f.CompanyAddress = "" },
		func(f *Form) { f.CertificateURL = "" },
	} {
		form := validProviderForm()
		mutate(&form)
		err := Validate(form)
		if err == nil || err.Code != CodeMissingCompanyDetails {
			t.Fatalf("expected MissingCompanyDetails, got %+v", err)
		}
	}
}

func TestValidateWeakPasswords(t *testing.T) {
	for _, password := range []string{
		"abc123",    // too short, no uppercase, no special
		"abcdefgh",  // letters only
		"ABCDEFG1!", // no lowercase
		"abcdefg1!", // no uppercase
		"Abcdefgh!", // no digit
		"Abcdefg1",  // no special
		"Abc 123!@", // space outside the allowed set
	} {
		form := validCustomerForm()
		form.Password = password
		form.ConfirmPassword = password
		err := Validate(form)
		if err == nil || err.Code != CodeWeakPassword {
			t.Fatalf("password %q: expected WeakPassword, got %+v", password, err)
		}
	}
}

func TestValidatePasswordMismatch(t *testing.T) {
	form := validCustomerForm()
	form.ConfirmPassword = "Abc123!?"
	err := Validate(form)
	if err == nil || err.Code != CodePasswordMismatch {
		t.Fatalf("expected PasswordMismatch, got %+v", err)
	}
}

func TestValidateStopsAtFirstFailure(t *testing.T) {
	// Both the email and the password are bad; the email rule runs first.
	form := validCustomerForm()
	form.Email = "broken"
	form.Password = "weak"
	err := Validate(form)
	if err == nil || err.Code != CodeInvalidEmailFormat {
		t.Fatalf("expected InvalidEmailFormat first, got %+v", err)
	}
}
