// Package browser owns the headless renderer used for keep-alive scraping.
//
// A Session holds exactly one renderer and one open page. The page is loaded
// once by Open; every Snapshot afterwards serializes the live DOM, so
// client-side odds updates show up without reloading the page.
//
// The renderer is reached only through the Renderer interface. ChromeLauncher
// provides the chromedp implementation; tests substitute their own.
package browser
