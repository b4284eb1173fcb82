package simulated

import "errors"

var ErrTransportFault = errors.New("simulated transport fault")

const paymentDeclinedReason = "Insufficient funds on card"
