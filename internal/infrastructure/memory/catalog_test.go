package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apex-sayim/internal/domain/entity"
	"github.com/jhoicas/apex-sayim/internal/infrastructure/memory"
)

func TestCatalog_FindByBarcode(t *testing.T) {
	ctx := context.Background()
	c := memory.DemoCatalog()

	p, err := c.FindByBarcode(ctx, "1234567890123")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "TEST001", p.Code)

	p, err = c.FindByBarcode(ctx, "86900001")
	require.NoError(t, err)
	require.NotNil(t, p, "barcode alternativo")
	assert.Equal(t, int64(3), p.ID)

	p, err = c.FindByBarcode(ctx, "TEST002")
	require.NoError(t, err)
	require.NotNil(t, p, "búsqueda por código")
	assert.Equal(t, int64(2), p.ID)

	p, err = c.FindByBarcode(ctx, "9999999999999")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestCatalog_List(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCatalog(
		&entity.Product{ID: 3, Code: "C"},
		&entity.Product{ID: 1, Code: "A"},
		&entity.Product{ID: 2, Code: "B"},
	)

	all, err := c.List(ctx, 1000)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Code, all[1].Code, all[2].Code})

	two, err := c.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestCatalog_AddReemplaza(t *testing.T) {
	c := memory.NewCatalog(&entity.Product{ID: 1, Name: "viejo"})
	c.Add(&entity.Product{ID: 1, Name: "nuevo"})
	all, _ := c.List(context.Background(), 10)
	require.Len(t, all, 1)
	assert.Equal(t, "nuevo", all[0].Name)
}
