package cart

import "github.com/richxcame/ride-hailing-web/internal/graphql"

// MyCartQuery loads the signed-in rider's cart
var MyCartQuery = graphql.MustDocument(`query MyCart {
  myCart {
    id
    totalItems
    totalPrice
    currency
    items {
      id
      quantity
      price
      product {
        id
        name
        imageUrl
      }
    }
  }
}`)
