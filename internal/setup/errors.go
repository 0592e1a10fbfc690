package setup

import "fmt"

type ConfigValueMissingError struct {
	Key string
}

func (e ConfigValueMissingError) Error() string {
	return fmt.Sprintf("config value %q not set", e.Key)
}

func NewConfigValueMissingError(key string) *ConfigValueMissingError {
	return &ConfigValueMissingError{
		Key: key,
	}
}
