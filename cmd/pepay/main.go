// Command pepay is a command-line front end for the Pepay invoicing API.
//
//	pepay invoices create --amount 25 --description "Order #1042"
//	pepay invoices list --status unpaid --page 2
//	pepay invoices customer cust_123
//	pepay invoices totals
//
// The API key is read from --api-key, the PEPAY_API_KEY environment
// variable or the api-key entry of ~/.pepay.yaml, in that order.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
