package utils

import (
	"fmt"
	"os/user"
)

func GetUser() (*user.User, error) {
	u, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return u, nil
}
