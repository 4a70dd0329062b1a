// Package sorare is a small GraphQL client for the Sorare API.
//
// Only the queries the tracker needs are implemented: the user's card
// gallery, recent token sale prices, card details with market floors, game
// projections and the current fixture's lineups.
//
// Responses are treated as untrusted. Optional fields decode into pointers
// so that "missing", "empty" and "zero" stay distinguishable, and callers
// degrade gracefully when a field is absent.
//
// Errors:
//   - ErrUnprocessable for HTTP 422, which the API returns for inputs it
//     cannot resolve (an unknown player slug, for instance)
//   - *GraphQLError when the response carries GraphQL errors
//   - ErrNotFound when the requested entity is null in the response
package sorare
