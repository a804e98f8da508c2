package repository_test

import (
	"testing"

	"homestay/internal/domains/booking/repository"

	"github.com/stretchr/testify/assert"
)

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		column   int
		expected string
	}{
		{1, "A"},
		{2, "B"},
		{7, "G"},
		{8, "H"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, repository.ColumnLetter(test.column))
	}
}
