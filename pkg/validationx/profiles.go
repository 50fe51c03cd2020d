package validationx

import (
	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
)

var (
	EmailRules = []validation.Rule{
		validation.Required,
		is.Email,
		validation.Length(5, 255),
	}

	NameRules = []validation.Rule{
		validation.Required,
		validation.Length(2, 30),
		IsPersonName,
	}

	PasswordRules = []validation.Rule{
		validation.Required,
		validation.Length(8, 128),
		PasswordFormat,
	}

	PhoneRules = []validation.Rule{
		validation.Length(0, 20),
		IsPhoneNumber,
	}

	StreetAddressRules = []validation.Rule{
		validation.Required,
		validation.Length(2, 50),
	}

	PostalCodeRules = []validation.Rule{
		validation.Required,
		validation.Length(3, 10),
		IsPostalCode,
	}

	CityRules = []validation.Rule{
		validation.Required,
		validation.Length(2, 30),
		IsPersonName,
	}
)
