package database

import (
	"clinic-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexModels_UniqueKeys(t *testing.T) {
	models := IndexModels()

	unique := map[string]string{}
	for collection, indexes := range models {
		for _, index := range indexes {
			require.NotNil(t, index.Options)
			require.NotNil(t, index.Options.Name)
			if index.Options.Unique != nil && *index.Options.Unique {
				unique[*index.Options.Name] = collection
			}
		}
	}

	assert.Equal(t, map[string]string{
		"uniq_national_id":    constvars.MongoCollectionPatients,
		"uniq_transaction_id": constvars.MongoCollectionPayments,
		"uniq_email":          constvars.MongoCollectionUsers,
	}, unique)
}

func TestIndexModels_OptionalFieldsAreSparse(t *testing.T) {
	for _, indexes := range IndexModels() {
		for _, index := range indexes {
			switch *index.Options.Name {
			case "uniq_national_id", "uniq_transaction_id", "claim_number":
				require.NotNil(t, index.Options.Sparse, *index.Options.Name)
				assert.True(t, *index.Options.Sparse, *index.Options.Name)
			}
		}
	}
}
