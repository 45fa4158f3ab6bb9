package dataset

import (
	"context"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
	"github.com/stretchr/testify/mock"
)

// MockLoader is a mock implementation of DatasetLoader for testing.
type MockLoader struct {
	mock.Mock
}

var _ contract.DatasetLoader = &MockLoader{} // Compile-time check

// Load implements the DatasetLoader interface.
func (m *MockLoader) Load(ctx context.Context, path string) (*schema.Dataset, error) {
	args := m.Called(ctx, path)
	ds, _ := args.Get(0).(*schema.Dataset)
	return ds, args.Error(1)
}
