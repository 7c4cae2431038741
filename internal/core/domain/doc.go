// Package domain defines the error taxonomy shared by the Kyoto core.
//
// Every failure that crosses a package boundary is a *DomainError carrying a
// stable code:
//
//   - KY-STOR-*: storage engine failures and misconfiguration
//   - KY-FLOW-*: instructions the dispatcher does not understand
//   - KY-CMD-*:  command decoding failures (CLI and REPL)
//
// Use errors.Is against the package-level sentinels; codes compare equal
// regardless of attached details or causes.
package domain
