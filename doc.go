// Package pepay is a client for the Pepay invoicing API.
//
// The client is a thin conduit: every method performs exactly one HTTP round
// trip, sends what it is given and returns what the API answers. It does not
// validate invoice fields, retry, paginate or cache.
//
// # Quick Start
//
//	client := pepay.New(os.Getenv("PEPAY_API_KEY"))
//
//	inv, err := client.CreateInvoice(ctx, pepay.CreateInvoiceParams{
//	    AmountUSD:   25,
//	    Description: "Order #1042",
//	    CustomerID:  "cust_123",
//	    ExpiresIn:   3600,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(inv.PaymentURL)
//
// Point the client elsewhere (a sandbox, a test server) with WithBaseURL, and
// control timeouts with WithHTTPClient:
//
//	client := pepay.New(key,
//	    pepay.WithBaseURL("https://sandbox.pepay.io"),
//	    pepay.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
//	)
//
// # Errors
//
// A non-2xx response is returned as *Error carrying the API's message, code
// and HTTP status:
//
//	if apiErr, ok := pepay.AsError(err); ok {
//	    switch apiErr.Code {
//	    case pepay.ErrCodeInvalidAmountRange:
//	        // ask for a different amount
//	    }
//	}
//
// Connection failures, timeouts and cancellations are not translated; they
// come back as the net/http error, so errors.Is(err, context.DeadlineExceeded)
// works as usual.
//
// # Idempotency
//
// CreateInvoice attaches a fresh UUID v4 Idempotency-Key to each call. Calling
// it twice with the same params creates two invoices; the key is never reused.
//
// # Webhooks
//
// The webhook package declares the event shape the API posts to merchants.
// Verifying webhook signatures is up to the receiver.
//
// # Plugins
//
// Plugins observe request and invoice lifecycle events. The observability
// package records metrics and the audit_hook package feeds an audit trail:
//
//	client := pepay.New(key,
//	    pepay.WithPlugin(observability.NewMetricsExtension(
//	        observability.NewPrometheusFactory(prometheus.DefaultRegisterer),
//	    )),
//	)
package pepay
