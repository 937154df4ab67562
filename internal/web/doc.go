// Package web serves the chatbot page and the admin panel.
//
// Pages are rendered server-side from embedded html/template files. The
// chat page talks to the JSON API from a small inline script; the admin
// panel is plain forms with flash messages carried across redirects in a
// signed cookie.
//
// Admin access is gated by the admin cookie set on login. Unknown paths
// render the chatbot page with a 404 status, so stray links land the
// visitor back in the conversation.
package web
