package seeding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-analytics/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-analytics/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestSeeder_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockSeedRepository(ctrl)
	seeder := NewSeeder(repo)

	opts := defaultOptions()
	opts.Sales = 50

	tests := []struct {
		name     string
		runOpts  RunOptions
		setup    func()
		validate func(t *testing.T, result *Result, err error)
	}{
		{
			name:    "Schema inexistente é criado antes da carga",
			runOpts: RunOptions{BatchSize: 100},
			setup: func() {
				gomock.InOrder(
					repo.EXPECT().SchemaExists(gomock.Any()).Return(false, nil),
					repo.EXPECT().InitSchema(gomock.Any()).Return(nil),
					repo.EXPECT().Insert(gomock.Any(), gomock.Any(), 100).
						DoAndReturn(func(_ context.Context, dataset *domain.Dataset, _ int) error {
							assert.Len(t, dataset.Sales, 50)
							return nil
						}),
					repo.EXPECT().CountSales(gomock.Any()).Return(50, nil),
				)
			},
			validate: func(t *testing.T, result *Result, err error) {
				require.NoError(t, err)
				assert.Equal(t, 5, result.Regions)
				assert.Equal(t, 25, result.Products)
				assert.Equal(t, 50, result.Sales)
				assert.Equal(t, 50, result.TotalSales)
			},
		},
		{
			name:    "Reset apaga os dados antes de inserir",
			runOpts: RunOptions{Reset: true},
			setup: func() {
				gomock.InOrder(
					repo.EXPECT().SchemaExists(gomock.Any()).Return(true, nil),
					repo.EXPECT().Reset(gomock.Any()).Return(nil),
					repo.EXPECT().Insert(gomock.Any(), gomock.Any(), 0).Return(nil),
					repo.EXPECT().CountSales(gomock.Any()).Return(50, nil),
				)
			},
			validate: func(t *testing.T, result *Result, err error) {
				require.NoError(t, err)
				assert.Equal(t, 50, result.TotalSales)
			},
		},
		{
			name:    "Falha na inserção interrompe o seed",
			runOpts: RunOptions{},
			setup: func() {
				repo.EXPECT().SchemaExists(gomock.Any()).Return(true, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any(), 0).Return(errors.New("duplicate key"))
			},
			validate: func(t *testing.T, result *Result, err error) {
				assert.Nil(t, result)
				assert.ErrorContains(t, err, "duplicate key")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			result, err := seeder.Run(context.Background(), opts, tt.runOpts)
			tt.validate(t, result, err)
		})
	}
}

func TestSeeder_RunInvalidOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Opções inválidas não chegam ao banco
	seeder := NewSeeder(mocks.NewMockSeedRepository(ctrl))

	opts := defaultOptions()
	opts.Customers = 0

	_, err := seeder.Run(context.Background(), opts, RunOptions{})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}
