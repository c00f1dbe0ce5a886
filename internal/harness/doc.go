// Package harness provides conformance testing for discovery runs.
//
// A scenario names a discovery profile and a list of assertions over the
// resulting signature database. The harness runs discovery against the
// built-in linalg bindings, persists the database to an in-memory store,
// reads it back and checks the assertions against what was stored.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: vector3_basics
//	description: "What this scenario validates"
//	owners: [Vector3]
//	max_arity: 2
//	tolerance: 0.0001
//	deny: [clone]
//	run_id: fixed-run
//	assertions:
//	  - type: signature_present
//	    signature: "Vector3.dot(Vector3) -> Scalar"
//	  - type: signature_absent
//	    signature: "Vector3.add(Vector3) -> Vector3"
//	  - type: operation_count
//	    owner: Vector3
//	    operation: dot
//	    count: 1
//	  - type: owner_count
//	    owner: Vector3
//	    count: 9
//
// # Assertion Types
//
//   - signature_present: the rendered signature is in the database
//   - signature_absent: the rendered signature is not in the database
//   - operation_count: the operation has exactly N signatures (optionally
//     restricted to one owner)
//   - owner_count: the owner has exactly N signatures
//
// # Deterministic Testing
//
// Every run uses testutil.FixedClock for GeneratedAt and a fixed run id, so
// repeated runs produce identical databases and golden snapshots.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/vector3.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
