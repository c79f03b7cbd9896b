// Package services implements the [Catalog] interface for the Spotify Web
// API and a YouTube oEmbed lookup used by the single-item import path.
//
// # Catalog Interface
//
// The importer resolves extracted track references against a [Catalog]. The
// interface keeps the resolution pipeline independent of any one provider.
//
// # Spotify Implementation
//
// [SpotifyClient] authenticates app-only via the OAuth2 client credentials
// flow; token acquisition and refresh are handled by the oauth2 transport.
// Every call is rate limited and bounded by a per-call timeout so a slow
// search cannot stall an import.
//
// [SpotifyClient.CheckSaved] calls a user-scoped endpoint; with app-only
// credentials the API rejects it and callers degrade to "nothing saved".
//
// # YouTube oEmbed
//
// [YouTubeClient] resolves a video ID to its title and channel name through
// the keyless public oEmbed endpoint. It is metadata lookup only; playlist
// pages go through the scraper.
//
// # Error Handling
//
// Clients use typed errors from the shared package:
//   - [shared.ErrMissingCredentials] : client id or secret absent
//   - [shared.ErrAPIRequest] : HTTP request failed or non-2xx status
//   - [shared.ErrPlaylistNotFound] : playlist ID not found
//   - [shared.ErrTrackNotFound] : track or video ID not found
package services
