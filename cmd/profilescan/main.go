// Package main provides the entry point for the ProfileScan CLI.
//
// ProfileScan evaluates social media profile records against known scam
// and manipulation patterns. It produces a risk score, red flags, and a
// privacy-tiered report.
//
// Usage:
//
//	profilescan analyze <profile-file>
//	profilescan analyze --mode investigation <profile-file...>
//
// See --help for all available options.
package main

// main is the entry point for ProfileScan.
func main() {
	Execute()
}
