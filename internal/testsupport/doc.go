// Package testsupport provides shared fixtures for command and HTTP tests:
// temp-rooted configs and fake catalog and storefront servers.
package testsupport
