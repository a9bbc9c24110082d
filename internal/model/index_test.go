package model_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/MaxKochergin/NNGP-sub002/internal/model"
)

func indexByName(t *testing.T, dest interface{}, name string) *schema.Index {
	t.Helper()
	s, err := schema.Parse(dest, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	for _, idx := range s.ParseIndexes() {
		if idx.Name == name {
			return idx
		}
	}
	t.Fatalf("index %s not declared", name)
	return nil
}

func TestUniqueIndexesSkipSoftDeletedRows(t *testing.T) {
	cases := []struct {
		dest   interface{}
		index  string
		column string
	}{
		{&model.Specialization{}, "uniq_specializations_name", "name"},
		{&model.Specialization{}, "uniq_specializations_slug", "slug"},
		{&model.User{}, "uniq_users_email", "email"},
	}
	for _, tc := range cases {
		t.Run(tc.index, func(t *testing.T) {
			idx := indexByName(t, tc.dest, tc.index)
			assert.Equal(t, "UNIQUE", idx.Class)
			assert.Equal(t, "deleted_at IS NULL", idx.Where)
			require.Len(t, idx.Fields, 1)
			assert.Equal(t, tc.column, idx.Fields[0].DBName)
		})
	}
}
