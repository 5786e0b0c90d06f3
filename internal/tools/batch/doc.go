// Package batch runs a tool operation over several event IDs or emails and
// reports per-item outcomes, so one failing item does not hide the others.
package batch
