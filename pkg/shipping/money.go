package shipping

// Money is a monetary amount in currency minor units (centavos).
// All pricing math stays in minor units so summing many packages
// never accumulates floating-point drift.
type Money = int64
