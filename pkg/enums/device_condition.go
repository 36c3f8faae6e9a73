package enums

import "fmt"

// DeviceCondition describes the working state of a submitted device.
type DeviceCondition string

const (
	DeviceConditionWorking          DeviceCondition = "WORKING"
	DeviceConditionPartiallyWorking DeviceCondition = "PARTIALLY_WORKING"
	DeviceConditionDead             DeviceCondition = "DEAD"
	DeviceConditionScrap            DeviceCondition = "SCRAP"
)

var validDeviceConditions = []DeviceCondition{
	DeviceConditionWorking,
	DeviceConditionPartiallyWorking,
	DeviceConditionDead,
	DeviceConditionScrap,
}

func (c DeviceCondition) String() string {
	return string(c)
}

// IsValid reports whether the condition is known.
func (c DeviceCondition) IsValid() bool {
	for _, candidate := range validDeviceConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseDeviceCondition converts raw input into a DeviceCondition.
func ParseDeviceCondition(value string) (DeviceCondition, error) {
	for _, candidate := range validDeviceConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid device condition %q", value)
}
