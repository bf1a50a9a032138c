package query

import "strings"

// Key identifies one cached result. Keys are compared element by element.
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether k starts with every element of prefix.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

func DirectoryKey() Key {
	return Key{"fab", "list"}
}

func EquipmentKey() Key {
	return Key{"equipment-status"}
}

func EquipmentCurrentStatusKey(facility string) Key {
	return append(EquipmentKey(), "current", facility)
}

func EquipmentNotAvailableKey(facility string) Key {
	return append(EquipmentKey(), "not-available", facility)
}

func EquipmentStorageKey(facility string) Key {
	return append(EquipmentKey(), "storage", facility)
}

func DeviceStatisticsOptionsKey(facility string) Key {
	return Key{"device-statistics", "options", facility}
}

func DeviceStatisticsDataKey(facility string) Key {
	return Key{"device-statistics", "all-data", facility}
}

func RecipeListKey(facility, tool string) Key {
	return Key{"recipe", "list", facility, tool}
}

func ToolFabMappingKey() Key {
	return Key{"tool-fab-mapping"}
}

func HealthKey() Key {
	return Key{"api", "health"}
}

func JobsStatusKey() Key {
	return Key{"api", "jobs", "status"}
}
