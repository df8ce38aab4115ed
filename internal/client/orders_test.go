package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"cloud-kitchen-client/internal/client"
	"cloud-kitchen-client/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderClient_Place(t *testing.T) {
	b := newBackend(t)
	b.signIn("tok")

	var received domain.PlaceOrderRequest
	b.router.HandleFunc("/api/orders", requireBearer("tok", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		writeJSON(w, http.StatusOK, ok(map[string]any{"id": 42, "totalAmount": 19.98, "status": "PENDING"}))
	})).Methods("POST")

	orders := client.NewOrderClient(b.requester())
	order, err := orders.Place(context.Background(), domain.PlaceOrderRequest{
		Items:           []domain.OrderItem{{MenuItemID: 5, Quantity: 2}},
		DeliveryAddress: "X",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, 19.98, order.TotalAmount)
	assert.Equal(t, "X", received.DeliveryAddress)
	require.Len(t, received.Items, 1)
	assert.Equal(t, int64(5), received.Items[0].MenuItemID)
	assert.Equal(t, 2, received.Items[0].Quantity)
}

func TestOrderClient_MineUnauthorized(t *testing.T) {
	b := newBackend(t)
	b.signIn("stale")
	b.expectRedirect()

	b.router.HandleFunc("/api/orders/my-orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Token expired"})
	}).Methods("GET")

	orders, err := client.NewOrderClient(b.requester()).Mine(context.Background())

	assert.Nil(t, orders)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, b.token())

	user, err := b.session.User(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestOrderClient_MineWithoutTokenReachesServer(t *testing.T) {
	b := newBackend(t)
	b.expectRedirect()

	b.router.HandleFunc("/api/orders/my-orders", requireBearer("tok", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok([]any{}))
	}))

	_, err := client.NewOrderClient(b.requester()).Mine(context.Background())

	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.NotErrorIs(t, err, client.ErrNotAuthenticated)
	assert.Equal(t, int32(1), b.hits.Load())
}

func TestOrderClient_Lists(t *testing.T) {
	b := newBackend(t)
	b.signIn("tok")

	for path, id := range map[string]int{
		"/api/orders/my-orders":      1,
		"/api/orders/chef/my-orders": 2,
		"/api/orders":                3,
	} {
		id := id
		b.router.HandleFunc(path, requireBearer("tok", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, ok([]map[string]any{{"id": id, "status": "CONFIRMED"}}))
		})).Methods("GET")
	}

	orders := client.NewOrderClient(b.requester())
	ctx := context.Background()

	mine, err := orders.Mine(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine[0].ID)

	chef, err := orders.ForChef(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), chef[0].ID)

	all, err := orders.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all[0].ID)
	assert.Equal(t, domain.OrderConfirmed, all[0].Status)
}

func TestOrderClient_UpdateStatus(t *testing.T) {
	b := newBackend(t)
	b.signIn("tok")

	b.router.HandleFunc("/api/orders/{id}/status", requireBearer("tok", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok(map[string]any{"id": 9, "status": r.URL.Query().Get("status")}))
	})).Methods("PATCH")

	orders := client.NewOrderClient(b.requester())

	order, err := orders.UpdateStatus(context.Background(), 9, domain.OrderPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPreparing, order.Status)

	_, err = orders.UpdateStatus(context.Background(), 9, "COOKED")
	assert.Equal(t, client.KindValidation, client.KindOf(err))
	assert.Equal(t, int32(1), b.hits.Load())
}

func TestOrderClient_UpdateStatusRejected(t *testing.T) {
	b := newBackend(t)
	b.signIn("tok")

	b.router.HandleFunc("/api/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Cannot move a DELIVERED order to PREPARING"})
	}).Methods("PATCH")

	_, err := client.NewOrderClient(b.requester()).UpdateStatus(context.Background(), 9, domain.OrderPreparing)

	assert.EqualError(t, err, "Cannot move a DELIVERED order to PREPARING")
	assert.Equal(t, "tok", b.token())
}

func TestOrderClient_Cancel(t *testing.T) {
	b := newBackend(t)
	b.signIn("tok")

	b.router.HandleFunc("/api/orders/{id}", requireBearer("tok", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Order cancelled"})
	})).Methods("DELETE")

	env, err := client.NewOrderClient(b.requester()).Cancel(context.Background(), 12)

	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, "Order cancelled", env.Message)
}

func TestOrderClient_SuccessFalseIsError(t *testing.T) {
	b := newBackend(t)
	b.signIn("tok")

	b.router.HandleFunc("/api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Order not visible"})
	}).Methods("GET")

	_, err := client.NewOrderClient(b.requester()).Get(context.Background(), 3)

	assert.Equal(t, client.KindAPI, client.KindOf(err))
	assert.EqualError(t, err, "Order not visible")
}
