// Package sim implements a small decentralized economy: autonomous firms
// convert raw materials into goods through timed production cycles, trade
// through a stochastic double-sided market, hire and fire labor, adjust
// prices from observed sell-through, and are founded or liquidated from
// solvency and demand signals.
//
// The simulation is single-threaded and deterministic: one Tick advances
// every system once in a fixed order, and all randomness flows from a
// PartitionedRNG seeded per run. All money movement goes through paired
// ledger transactions, so total money is conserved across a run.
package sim
