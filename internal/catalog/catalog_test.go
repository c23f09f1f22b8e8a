package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CatalogSuite struct {
	suite.Suite
	catalog *Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) SetupTest() {
	s.catalog = Builtin()
}

func (s *CatalogSuite) TestLookup() {
	s.Run("finds known field", func() {
		f, ok := s.catalog.Lookup("prn")
		s.Require().True(ok)
		s.Equal("prn", f.FieldName())
		s.False(f.IsMutable())
	})

	s.Run("reports absence without error", func() {
		_, ok := s.catalog.Lookup("shoeSize")
		s.False(ok)
	})
}

func (s *CatalogSuite) TestResolveSynthesizesDefault() {
	f := s.catalog.Resolve("shoeSize")
	text, ok := f.(TextField)
	s.Require().True(ok, "synthesized fields are text fields")
	s.Equal("shoeSize", text.Name)
	s.Equal("shoeSize", text.Label)
	s.Equal("shoeSize", text.Placeholder)
	s.Equal(".+", text.Regex)
	s.True(text.Mutable)
}

func (s *CatalogSuite) TestAccepts() {
	s.Run("text field enforces regex", func() {
		f := s.catalog.Resolve("prn")
		s.True(f.Accepts("1234567890"))
		s.False(f.Accepts("12345"))
		s.False(f.Accepts("abcdefghij"))
	})

	s.Run("select field enforces membership", func() {
		f := s.catalog.Resolve("year")
		s.True(f.Accepts("Second"))
		s.False(f.Accepts("Fifth"))
	})

	s.Run("default accepts anything non-empty", func() {
		f := Default("anything")
		s.True(f.Accepts("x"))
		s.False(f.Accepts(""))
	})

	s.Run("broken pattern does not block", func() {
		f := TextField{Name: "bad", Regex: "("}
		s.True(f.Accepts("whatever"))
	})
}

func (s *CatalogSuite) TestDescriptorShapes() {
	s.Run("text descriptor carries placeholder and regex", func() {
		d := s.catalog.Resolve("college").WithValue("COEP")

		raw, err := json.Marshal(d)
		s.Require().NoError(err)

		var decoded map[string]any
		s.Require().NoError(json.Unmarshal(raw, &decoded))
		s.Equal("text", decoded["type"])
		s.Equal("COEP", decoded["value"])
		s.Contains(decoded, "placeholder")
		s.Contains(decoded, "regex")
		s.NotContains(decoded, "options")
	})

	s.Run("select descriptor carries options", func() {
		d := s.catalog.Resolve("year").WithValue("")

		raw, err := json.Marshal(d)
		s.Require().NoError(err)

		var decoded map[string]any
		s.Require().NoError(json.Unmarshal(raw, &decoded))
		s.Equal("select", decoded["type"])
		s.Equal("", decoded["value"])
		s.Contains(decoded, "options")
		s.NotContains(decoded, "regex")
		s.NotContains(decoded, "placeholder")
	})
}
