package payments

import "github.com/richxcame/ride-hailing-web/internal/graphql"

// CreatePaymentMutation charges the rider for a ride
var CreatePaymentMutation = graphql.MustDocument(`mutation CreatePayment($input: CreatePaymentInput!) {
  createPayment(input: $input) {
    id
    amount
    currency
    status
    method
    transactionId
    createdAt
  }
}`)
