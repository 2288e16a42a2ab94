// Command coverfinder resolves cover art for game titles.
//
// It looks titles up in the sharded GameDB catalog first and the Steam
// storefront second, and can fill image paths across a whole app list, probe
// Steam CDN artwork, and serve the same operations over HTTP.
package main
