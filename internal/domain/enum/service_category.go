package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ServiceCategory groups billable services in the catalog.
type ServiceCategory string

const (
	ServiceCategoryDevelopment ServiceCategory = "development"
	ServiceCategoryMaintenance ServiceCategory = "maintenance"
	ServiceCategoryConsulting  ServiceCategory = "consulting"
	ServiceCategoryTraining    ServiceCategory = "training"
	ServiceCategoryOther       ServiceCategory = "other"
)

var serviceCategoryLabels = map[ServiceCategory]string{
	ServiceCategoryDevelopment: "Software development",
	ServiceCategoryMaintenance: "Maintenance",
	ServiceCategoryConsulting:  "Consulting",
	ServiceCategoryTraining:    "Training",
	ServiceCategoryOther:       "Other",
}

func (c ServiceCategory) String() string {
	return string(c)
}

func (c ServiceCategory) Label() string {
	if label, ok := serviceCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func (c ServiceCategory) IsValid() bool {
	_, ok := serviceCategoryLabels[c]
	return ok
}

func (c ServiceCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

func (c *ServiceCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	category := ServiceCategory(str)
	if !category.IsValid() {
		return fmt.Errorf("service category %q: %w", str, ErrInvalidValue)
	}
	*c = category
	return nil
}

func (c ServiceCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ServiceCategory) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = ServiceCategoryOther
	case string:
		*c = ServiceCategory(v)
	case []byte:
		*c = ServiceCategory(v)
	default:
		return fmt.Errorf("cannot scan %T into ServiceCategory", value)
	}
	return nil
}
