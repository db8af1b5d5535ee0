// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		req      PageRequest
		total    int64
		expected PageInfo
	}{
		{"defaults", PageRequest{}, 25, PageInfo{Total: 25, NumPages: 3, CurrentPage: 1, PageSize: 10}},
		{"empty listing has one page", PageRequest{Page: 3}, 0, PageInfo{Total: 0, NumPages: 1, CurrentPage: 1, PageSize: 10}},
		{"page past end clamps", PageRequest{Page: 7, PageSize: 10}, 25, PageInfo{Total: 25, NumPages: 3, CurrentPage: 3, PageSize: 10}},
		{"negative page clamps", PageRequest{Page: -1, PageSize: 5}, 12, PageInfo{Total: 12, NumPages: 3, CurrentPage: 1, PageSize: 5}},
		{"page size capped", PageRequest{PageSize: 500}, 150, PageInfo{Total: 150, NumPages: 2, CurrentPage: 1, PageSize: MaxPageSize}},
		{"exact multiple", PageRequest{Page: 2, PageSize: 5}, 10, PageInfo{Total: 10, NumPages: 2, CurrentPage: 2, PageSize: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, paginate(tt.req, tt.total))
		})
	}
}

func TestPageInfoOffset(t *testing.T) {
	assert.Equal(t, uint(0), PageInfo{CurrentPage: 1, PageSize: 10}.offset())
	assert.Equal(t, uint(20), PageInfo{CurrentPage: 3, PageSize: 10}.offset())
}
