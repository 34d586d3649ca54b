package registry_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semschema/generator"
	"github.com/c360/semschema/registry"
)

func TestDefault_ListTypes(t *testing.T) {
	reg := registry.Default()

	types := reg.ListTypes()
	assert.Len(t, types, 9)
	assert.True(t, sort.StringsAreSorted(types))

	expected := []string{
		"Article", "Course", "Event", "FAQPage", "HowTo",
		"Organization", "Person", "Product", "Recipe",
	}
	assert.Equal(t, expected, types)
}

func TestRegisterType(t *testing.T) {
	reg := registry.New()

	rule := registry.Rule{
		TemplateRequired:  []string{"name"},
		ValidatorRequired: []string{"@context", "@type", "name"},
	}
	require.NoError(t, reg.RegisterType("Book", rule))
	assert.True(t, reg.HasType("Book"))

	// The registry must hold its own copies
	rule.TemplateRequired[0] = "mutated"
	tpl, err := reg.GetTemplate("Book")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, tpl.Required)
}

func TestRegisterType_EmptyName(t *testing.T) {
	reg := registry.New()
	err := reg.RegisterType("", registry.Rule{})
	require.Error(t, err)
}

func TestUnknownTypeLookups(t *testing.T) {
	reg := registry.Default()

	_, err := reg.GetTemplate("Widget")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Widget")

	_, err = reg.GetRequiredFields("Widget")
	require.Error(t, err)

	_, err = reg.GetRecommendedFields("Widget")
	require.Error(t, err)

	assert.False(t, reg.HasType("Widget"))
}

func TestValidatorRequired_IncludesFramingKeys(t *testing.T) {
	reg := registry.Default()

	for _, name := range reg.ListTypes() {
		required, err := reg.GetRequiredFields(name)
		require.NoError(t, err)
		assert.Contains(t, required, "@context", "type %s", name)
		assert.Contains(t, required, "@type", "type %s", name)
	}
}

// The generator carries its own per-type template table; it must agree with
// the registry's field for field.
func TestDefaultsMatchGeneratorTemplates(t *testing.T) {
	reg := registry.Default()
	templates := generator.Templates()

	require.Len(t, templates, 9)

	for name, tpl := range templates {
		regTpl, err := reg.GetTemplate(name)
		require.NoError(t, err, "type %s", name)
		assert.Equal(t, regTpl.Required, tpl.Required, "required fields for %s", name)
		assert.Equal(t, regTpl.Optional, tpl.Optional, "optional fields for %s", name)
	}
}
