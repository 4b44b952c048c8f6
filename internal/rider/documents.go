package rider

import "github.com/richxcame/ride-hailing-web/internal/graphql"

// UpdateRiderLocationMutation reports the rider's current position
var UpdateRiderLocationMutation = graphql.MustDocument(`mutation UpdateRiderLocation($input: UpdateRiderLocationInput!) {
  updateRiderLocation(input: $input) {
    id
    latitude
    longitude
    heading
    updatedAt
  }
}`)
