package forms

// Field names, matching the JSON names the API expects.
const (
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldNewPassword     = "newPassword"
	FieldToken           = "token"
	FieldCode            = "code"
)

const (
	MsgEmailInvalid     = "Email must be a valid email address"
	MsgPasswordRequired = "Password is required"
	MsgPasswordShort    = "Password must be at least 8 characters"
	MsgPasswordsMatch   = "Passwords must match"
	MsgPhoneRequired    = "Phone is required"
	MsgCodeDigits       = "Code must be exactly 6 digits"
	MsgTokenRequired    = "Token is required"
)

const minPasswordLen = 8

func emailField() Field {
	return Field{Name: FieldEmail, Label: "Email", Rules: []Rule{Email(MsgEmailInvalid)}}
}

func passwordField(name, label string) Field {
	return Field{Name: name, Label: label, Secret: true, Rules: []Rule{
		Required(MsgPasswordRequired),
		MinLen(minPasswordLen, MsgPasswordShort),
	}}
}

func nameField(name, label string) Field {
	return Field{Name: name, Label: label, Rules: []Rule{
		Required(label + " is required"),
		Alpha(label + " must contain only letters"),
	}}
}

var Login = Schema{
	Name: "login",
	Fields: []Field{
		emailField(),
		passwordField(FieldPassword, "Password"),
	},
}

var Register = Schema{
	Name: "register",
	Fields: []Field{
		nameField(FieldFirstName, "First name"),
		nameField(FieldLastName, "Last name"),
		emailField(),
		{Name: FieldPhone, Label: "Phone", Rules: []Rule{Required(MsgPhoneRequired)}},
		passwordField(FieldPassword, "Password"),
		{Name: FieldConfirmPassword, Label: "Confirm password", Secret: true, Rules: []Rule{
			Matches(FieldPassword, MsgPasswordsMatch),
		}},
	},
}

var ResetRequest = Schema{
	Name:   "reset-request",
	Fields: []Field{emailField()},
}

var ResetPassword = Schema{
	Name: "reset-password",
	Fields: []Field{
		{Name: FieldToken, Label: "Reset token", Rules: []Rule{Required(MsgTokenRequired)}},
		passwordField(FieldNewPassword, "New password"),
		{Name: FieldConfirmPassword, Label: "Confirm password", Secret: true, Rules: []Rule{
			Matches(FieldNewPassword, MsgPasswordsMatch),
		}},
	},
}

// Verify2FA carries the email from the reset request as navigation state;
// the user only types the code.
var Verify2FA = Schema{
	Name: "verify-2fa",
	Fields: []Field{
		emailField(),
		{Name: FieldCode, Label: "Code", Rules: []Rule{Digits(6, MsgCodeDigits)}},
	},
}

var ResendCode = Schema{
	Name:   "resend-code",
	Fields: []Field{emailField()},
}

var ConfirmEmail = Schema{
	Name: "confirm-email",
	Fields: []Field{
		{Name: FieldToken, Label: "Confirmation token", Rules: []Rule{Required(MsgTokenRequired)}},
	},
}
