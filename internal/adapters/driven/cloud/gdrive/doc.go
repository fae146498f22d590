// Package gdrive stores the gradebook snapshot in Google Drive.
//
// The snapshot is a single JSON file, gradebook.json, kept in the
// application data folder so it is hidden from the user's Drive and
// only visible to this client. Requests are rate limited and Google API
// errors are mapped onto domain errors.
//
// Authentication uses an existing OAuth token file; refreshed tokens are
// written back to the same file.
package gdrive
