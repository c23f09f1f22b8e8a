package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Omkar76/nscc-backend/internal/account"
	"github.com/Omkar76/nscc-backend/internal/catalog"
	"github.com/Omkar76/nscc-backend/pkg/derrors"
)

type ValidatorSuite struct {
	suite.Suite
	catalog *catalog.Catalog
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) SetupTest() {
	s.catalog = catalog.Builtin()
}

func (s *ValidatorSuite) profileWith(fields map[string]string) *account.Profile {
	return &account.Profile{UID: "u1", Fields: fields}
}

func (s *ValidatorSuite) TestMissingRequiredField() {
	v := NewValidator(s.catalog, ValidatorOptions{})

	s.Run("stops at first missing field by default", func() {
		_, _, err := v.Validate([]string{"college", "year"}, map[string]string{}, nil)
		s.Require().Error(err)
		s.True(derrors.HasCode(err, derrors.CodeRequiredFieldMissing))
		s.Contains(err.Error(), "college")
		s.NotContains(err.Error(), "year")
	})

	s.Run("nothing accepted on failure", func() {
		accepted, dropped, err := v.Validate(
			[]string{"college", "year"},
			map[string]string{"college": "COEP"},
			nil,
		)
		s.Require().Error(err)
		s.Nil(accepted)
		s.Nil(dropped)
		s.Contains(err.Error(), "year")
	})

	s.Run("report-all mode names every missing field", func() {
		all := NewValidator(s.catalog, ValidatorOptions{ReportAllMissing: true})
		_, _, err := all.Validate([]string{"college", "year", "phone"}, map[string]string{"year": "First"}, nil)
		s.Require().Error(err)
		s.Contains(err.Error(), "college")
		s.Contains(err.Error(), "phone")
	})
}

func (s *ValidatorSuite) TestImmutableFields() {
	v := NewValidator(s.catalog, ValidatorOptions{})

	s.Run("first set of an immutable field is accepted", func() {
		accepted, dropped, err := v.Validate(
			[]string{"prn"},
			map[string]string{"prn": "1234567890"},
			s.profileWith(nil),
		)
		s.Require().NoError(err)
		s.Empty(dropped)
		s.Equal("1234567890", accepted["prn"])
	})

	s.Run("overwrite of a stored immutable value is dropped, not an error", func() {
		accepted, dropped, err := v.Validate(
			[]string{"prn", "college"},
			map[string]string{"prn": "9999999999", "college": "COEP"},
			s.profileWith(map[string]string{"prn": "1234567890"}),
		)
		s.Require().NoError(err)
		s.Equal([]string{"prn"}, dropped)
		s.NotContains(accepted, "prn")
		s.Equal("COEP", accepted["college"])
	})

	s.Run("empty accepted map is a valid outcome", func() {
		accepted, dropped, err := v.Validate(
			[]string{"prn"},
			map[string]string{"prn": "9999999999"},
			s.profileWith(map[string]string{"prn": "1234567890"}),
		)
		s.Require().NoError(err)
		s.Empty(accepted)
		s.Equal([]string{"prn"}, dropped)
	})
}

func (s *ValidatorSuite) TestConstraintEnforcement() {
	s.Run("off by default, values pass verbatim", func() {
		v := NewValidator(s.catalog, ValidatorOptions{})
		accepted, _, err := v.Validate(
			[]string{"phone"},
			map[string]string{"phone": "not-a-number"},
			nil,
		)
		s.Require().NoError(err)
		s.Equal("not-a-number", accepted["phone"])
	})

	s.Run("rejects constraint failures when enabled", func() {
		v := NewValidator(s.catalog, ValidatorOptions{EnforceConstraints: true})
		_, _, err := v.Validate(
			[]string{"phone"},
			map[string]string{"phone": "not-a-number"},
			nil,
		)
		s.Require().Error(err)
		s.True(derrors.HasCode(err, derrors.CodeBadRequest))
		s.Contains(err.Error(), "phone")
	})

	s.Run("select membership enforced when enabled", func() {
		v := NewValidator(s.catalog, ValidatorOptions{EnforceConstraints: true})
		_, _, err := v.Validate(
			[]string{"year"},
			map[string]string{"year": "Fifth"},
			nil,
		)
		s.Require().Error(err)

		accepted, _, err := v.Validate(
			[]string{"year"},
			map[string]string{"year": "Third"},
			nil,
		)
		s.Require().NoError(err)
		s.Equal("Third", accepted["year"])
	})
}

func (s *ValidatorSuite) TestUncataloguedFields() {
	v := NewValidator(s.catalog, ValidatorOptions{})

	accepted, dropped, err := v.Validate(
		[]string{"teamName"},
		map[string]string{"teamName": "Segfault Society"},
		s.profileWith(map[string]string{"teamName": "Old Team"}),
	)
	s.Require().NoError(err)
	s.Empty(dropped, "synthesized defaults are mutable")
	s.Equal("Segfault Society", accepted["teamName"])
}

func (s *ValidatorSuite) TestExtraSubmittedFieldsAreIgnored() {
	v := NewValidator(s.catalog, ValidatorOptions{})

	accepted, _, err := v.Validate(
		[]string{"college"},
		map[string]string{"college": "COEP", "malicious": "payload"},
		nil,
	)
	s.Require().NoError(err)
	s.NotContains(accepted, "malicious", "only required names are considered")
}
