// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package clock abstracts the time package behind an interface.  Production code uses System();
tests inject a clocktest.Manual or clocktest.Mock to control time deterministically.
*/
package clock
