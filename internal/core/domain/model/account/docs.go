// Package account contains the Account aggregate: a platform participant
// with a role, an admin-reviewed approval status, and a pair of balances
// (client and driver) that the settlement commands debit and credit. The
// aggregate enforces non-negative balances and the pending-only review rule;
// which operations a role may call is decided by the access policy in the
// services package.
package account
