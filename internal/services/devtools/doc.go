// Package devtools observes a WhatsApp Web tab through the Chrome DevTools
// Protocol. It attaches to an already running browser over its debugging
// port, drives the page with Runtime.evaluate, and exposes the message pane
// as an observation source for the scroll loader.
package devtools
