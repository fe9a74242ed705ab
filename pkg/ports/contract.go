package ports

import (
	"context"
	"testing"

	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRepositoryContract runs a suite of tests to verify that a Repository implementation
// adheres to the defined interface contract. The repository must start empty.
func RunRepositoryContract(t *testing.T, repo Repository[*domain.Category]) {
	ctx := context.Background()

	t.Run("Insert assigns increasing ids", func(t *testing.T) {
		a := &domain.Category{Name: "Tools"}
		b := &domain.Category{Name: "Garden"}

		idA, err := repo.Insert(ctx, a)
		require.NoError(t, err)
		idB, err := repo.Insert(ctx, b)
		require.NoError(t, err)

		assert.Positive(t, idA)
		assert.Greater(t, idB, idA)
		assert.Equal(t, idA, a.ID, "Insert should set the id on the value")
		assert.Equal(t, idB, b.ID)
	})

	t.Run("Get", func(t *testing.T) {
		c := &domain.Category{Name: "Kitchen", Description: "Pots and pans"}
		id, err := repo.Insert(ctx, c)
		require.NoError(t, err)

		loaded, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, loaded.ID)
		assert.Equal(t, "Kitchen", loaded.Name)
		assert.Equal(t, "Pots and pans", loaded.Description)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := repo.Get(ctx, 987654)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Returned values are isolated", func(t *testing.T) {
		c := &domain.Category{Name: "Books"}
		id, err := repo.Insert(ctx, c)
		require.NoError(t, err)

		c.Name = "mutated after insert"
		loaded, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Books", loaded.Name)

		loaded.Name = "mutated after get"
		again, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Books", again.Name)
	})

	t.Run("Put", func(t *testing.T) {
		c := &domain.Category{Name: "Toys"}
		id, err := repo.Insert(ctx, c)
		require.NoError(t, err)

		c.Name = "Games"
		require.NoError(t, repo.Put(ctx, c))

		loaded, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Games", loaded.Name)

		err = repo.Put(ctx, &domain.Category{ID: 987654, Name: "ghost"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		c := &domain.Category{Name: "Temporary"}
		id, err := repo.Insert(ctx, c)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, id))

		_, err = repo.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, "Get after Delete should return ErrNotFound")
		assert.ErrorIs(t, repo.Delete(ctx, id), domain.ErrNotFound)
	})

	t.Run("List is ordered by id", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, all)
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].ID, all[i].ID)
		}
		for _, c := range all {
			assert.NotEqual(t, "Temporary", c.Name)
		}
	})

	t.Run("Ids are not reused after delete", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		last := all[len(all)-1]
		require.NoError(t, repo.Delete(ctx, last.ID))

		id, err := repo.Insert(ctx, &domain.Category{Name: "After delete"})
		require.NoError(t, err)
		assert.Greater(t, id, last.ID)
	})
}
