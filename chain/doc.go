// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package chain sequences asynchronous steps.  Each step returns a Signal, and the next step starts only
once that Signal reports success.  A failed step aborts the chain.

Future is the Signal implementation provided here, and the result of every chain is itself a Future,
so chains nest.
*/
package chain
