package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerDocumentListsRoutes(t *testing.T) {
	var doc struct {
		BasePath    string                            `json:"basePath"`
		Paths       map[string]map[string]interface{} `json:"paths"`
		Definitions map[string]interface{}            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	assert.Equal(t, "/api", doc.BasePath)
	for path, method := range map[string]string{
		"/auth/login":                        "post",
		"/tests/{test_id}/start":             "post",
		"/tests/{test_id}/submit":            "post",
		"/test-attempts/{attempt_id}/report": "get",
		"/invitations/{token}/qr":            "get",
	} {
		require.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], method, path)
	}
	assert.Contains(t, doc.Definitions, "dto.TestAttemptDetailDTO")
	assert.Contains(t, doc.Definitions, "dto.ErrorResponse")
}
