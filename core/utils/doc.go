// Package utils provides common utility functions for the card-tracker application.
// It includes helpers that turn optional API values into sheet cells and parse
// them back, shared by the feature packages.
package utils
