// Package session provides browser-session plumbing for the chatbot.
//
// [Memory] keeps the last few chat exchanges per session in process memory,
// capped at a small window so sessions never bloat. There is deliberately no
// persistence: a restart starts every conversation fresh.
//
// [Manager] issues and verifies HMAC-signed cookies: the chat session ID,
// the authenticated admin identity, and one-shot flash notices for the admin
// pages. Signatures use HMAC-SHA256 with constant-time comparison.
package session
