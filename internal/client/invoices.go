package client

import (
	"context"
	"fmt"
	"net/http"

	"cloud-kitchen-client/internal/domain"

	"github.com/skip2/go-qrcode"
)

type InvoiceClient struct {
	r *Requester
}

func NewInvoiceClient(r *Requester) *InvoiceClient {
	return &InvoiceClient{r: r}
}

func (c *InvoiceClient) Get(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	inv, err := sendData[domain.Invoice](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/invoices/%d", orderID),
		Auth:   AuthOptional,
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (c *InvoiceClient) Link(orderID int64) string {
	return c.r.URL(fmt.Sprintf("/invoices/%d", orderID))
}

// QRCode renders a PNG QR code of the invoice link, size pixels square.
func (c *InvoiceClient) QRCode(orderID int64, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(c.Link(orderID), qrcode.Medium, size)
}
