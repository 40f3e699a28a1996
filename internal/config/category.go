package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ServiceCategory identifies a pluggable service slot in a template.
// The string value is canonical: it is used as the directory name under the
// shared-services root and as the key in rendering contexts, so discovery,
// validation, and context-building all agree on the same spelling.
type ServiceCategory string

const (
	CategoryAuth       ServiceCategory = "auth"
	CategoryPayments   ServiceCategory = "payments"
	CategoryDatabase   ServiceCategory = "database"
	CategoryAI         ServiceCategory = "ai"
	CategoryAPI        ServiceCategory = "api"
	CategoryDeployment ServiceCategory = "deployment"
	CategoryMonitoring ServiceCategory = "monitoring"
	CategoryEmail      ServiceCategory = "email"
	CategoryStorage    ServiceCategory = "storage"
)

// Categories returns all service categories in their canonical order.
func Categories() []ServiceCategory {
	return []ServiceCategory{
		CategoryAuth,
		CategoryPayments,
		CategoryDatabase,
		CategoryAI,
		CategoryAPI,
		CategoryDeployment,
		CategoryMonitoring,
		CategoryEmail,
		CategoryStorage,
	}
}

// ParseCategory converts a string into a ServiceCategory.
func ParseCategory(s string) (ServiceCategory, error) {
	c := ServiceCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown service category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryAuth, CategoryPayments, CategoryDatabase, CategoryAI,
		CategoryAPI, CategoryDeployment, CategoryMonitoring, CategoryEmail,
		CategoryStorage:
		return true
	}
	return false
}

func (c ServiceCategory) String() string {
	return string(c)
}

// UnmarshalYAML validates the category while decoding a manifest.
func (c *ServiceCategory) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
