package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	contract "nft-auction/internal/contractRuntime"
	"nft-auction/internal/repository"
	"nft-auction/internal/rules"
	"nft-auction/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const operatorAddress = "mn_shield-addr_demo"

// SetupTestRouter initializes the router with an in-memory store for integration testing.
func SetupTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	runtime, err := contract.NewContractRuntime(context.Background(), store, nil, contract.Options{
		Fee:               rules.TransactionFee,
		Grant:             rules.MultiUserGrant,
		OperatorAddress:   operatorAddress,
		UnshieldedAddress: "mn_addr_demo",
		ContractAddress:   "0x5FbDB2315678afecb367f032d93F642f64180aa3",
	})
	require.NoError(t, err)

	return server.SetupRouter(runtime), store
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}
