// Package services contains the application services of the OTPKeeper
// client: server authentication, icon downloads and QR export.
//
// Codes and seeds are handled by package session; nothing here sees a
// plaintext seed except ExportService, which renders one into a QR image
// on explicit request.
package services
