package integrationtests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nft-auction/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func ledger(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	state, ok := resp["state"].(map[string]any)
	require.True(t, ok, "response has no state: %v", resp)
	return state
}

// The full auction over HTTP: start, two bids, a rejected bid, end, settle
func TestContractAPI_AuctionLifecycle(t *testing.T) {
	router, store := SetupTestRouter(t)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Init", ledger(t, resp)["statusName"])
	require.Equal(t, "10000", resp["wallet"].(map[string]any)["balance"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/start", map[string]any{
		"nftId":        "nft-001",
		"nftName":      "Midnight Genesis",
		"reservePrice": 500,
		"endTime":      24,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["success"])
	require.Equal(t, "Auction started", resp["message"])
	require.Equal(t, "Open", ledger(t, resp)["statusName"])
	require.Equal(t, "9895", resp["walletBalance"])
	require.Equal(t, "Midnight Genesis", resp["auctionData"].(map[string]any)["nftName"])

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/bid", map[string]any{"bidder": "bob", "amount": 600})
	require.Equal(t, true, resp["success"])
	require.Equal(t, "600", ledger(t, resp)["highestBid"])
	require.Equal(t, "9395", resp["walletBalance"])

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/bid", map[string]any{"bidder": "carol"})
	require.Equal(t, true, resp["success"])
	require.Equal(t, "700", ledger(t, resp)["highestBid"])
	require.Equal(t, 2.0, ledger(t, resp)["totalBids"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/bid", map[string]any{"bidder": "dave", "amount": "650"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, resp["success"])
	require.Equal(t, "Failed to record bid", resp["message"])
	require.Contains(t, resp["error"], "bid must be higher than current highest bid of 700 tNIGHT")

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodGet, "/auction/topbid", nil)
	require.Equal(t, "700", resp["topBid"])

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/end", map[string]any{"caller": "bob"})
	require.Equal(t, false, resp["success"])

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/end", nil)
	require.Equal(t, true, resp["success"])
	require.Equal(t, "Closed", ledger(t, resp)["statusName"])

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodGet, "/auction/status", nil)
	require.Equal(t, 2.0, ledger(t, resp)["auctionStatus"])

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/settle", nil)
	require.Equal(t, true, resp["success"])
	require.Equal(t, "Done", ledger(t, resp)["statusName"])
	require.Equal(t, "10585", resp["walletBalance"])

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodGet, "/wallet?address=bob", nil)
	require.Equal(t, "9395", resp["wallet"].(map[string]any)["balance"], "outbid bidder is not refunded")

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodGet, "/wallet/transactions", nil)
	require.Equal(t, 4.0, resp["count"])

	require.Contains(t, store.Keys(), repository.KeyContract)

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodPost, "/reset", nil)
	require.Equal(t, "Contract reset to initial state", resp["message"])
	require.NotContains(t, store.Keys(), repository.KeyContract)

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodGet, "/auction/status", nil)
	require.Equal(t, "Init", ledger(t, resp)["statusName"])
}

// A listing started with hideBidders and hideAmounts never reveals them over HTTP
func TestContractAPI_HiddenListing(t *testing.T) {
	router, _ := SetupTestRouter(t)

	resp, _ := ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/start", map[string]any{
		"nftName":      "Sealed Lot",
		"reservePrice": 500,
		"hideBidders":  true,
		"hideAmounts":  true,
	})
	require.Equal(t, true, resp["success"])
	require.NotContains(t, ledger(t, resp), "highestBid")

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/bid", map[string]any{"bidder": "bob", "amount": 777})
	require.Equal(t, true, resp["success"])
	require.NotContains(t, ledger(t, resp), "highestBid")
	require.NotContains(t, ledger(t, resp), "highestBidder")

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/bid", map[string]any{"bidder": "carol"})
	require.Equal(t, true, resp["success"])
	require.NotContains(t, ledger(t, resp), "highestBid")
	require.NotContains(t, ledger(t, resp), "highestBidder")

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodGet, "/auction/topbid", nil)
	require.Equal(t, true, resp["success"])
	require.Nil(t, resp["topBid"])

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodGet, "/state", nil)
	require.NotContains(t, ledger(t, resp), "highestBid")
	require.NotContains(t, ledger(t, resp), "highestBidder")

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/end", nil)
	require.Equal(t, true, resp["success"])
	require.NotContains(t, ledger(t, resp), "highestBidder")

	resp, _ = ExecuteRequestAndParse(t, router, http.MethodPost, "/auction/settle", nil)
	require.Equal(t, true, resp["success"])
	require.Equal(t, "Done", ledger(t, resp)["statusName"])
	require.NotContains(t, ledger(t, resp), "highestBid")
}

// Tests request and routing errors
func TestContractAPI_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		validate   func(t *testing.T, resp map[string]any)
	}{
		{
			name:       "Invalid_JSON",
			method:     http.MethodPost,
			path:       "/auction/bid",
			body:       "{bidder: 'missing quotes'}",
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, resp map[string]any) {
				require.Equal(t, "invalid request payload", resp["message"])
			},
		},
		{
			name:       "Bid_Before_Start",
			method:     http.MethodPost,
			path:       "/auction/bid",
			body:       map[string]any{"bidder": "bob", "amount": 100},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, resp map[string]any) {
				require.Equal(t, false, resp["success"])
				require.Contains(t, resp["error"], "not open")
			},
		},
		{
			name:       "Unknown_Route",
			method:     http.MethodGet,
			path:       "/auction/cancel",
			wantStatus: http.StatusNotFound,
			validate: func(t *testing.T, resp map[string]any) {
				require.Equal(t, false, resp["success"])
				require.Equal(t, "Endpoint not found", resp["error"])
				endpoints := resp["availableEndpoints"].([]any)
				require.Len(t, endpoints, 11)
				require.Contains(t, endpoints, "GET  /health")
			},
		},
		{
			name:       "Wrong_Method",
			method:     http.MethodGet,
			path:       "/reset",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := SetupTestRouter(t)
			resp, w := ExecuteRequestAndParse(t, router, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.validate != nil {
				tt.validate(t, resp)
			}
		})
	}
}

func TestContractAPI_PanicReturns500(t *testing.T) {
	router, _ := SetupTestRouter(t)
	router.GET("/boom", func(*gin.Context) { panic("ledger corrupted") })

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, false, resp["success"])
	require.Equal(t, "ledger corrupted", resp["error"])
}

func TestContractAPI_CORS(t *testing.T) {
	router, _ := SetupTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/auction/bid", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Less(t, w.Code, 300)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", resp["status"])
}
