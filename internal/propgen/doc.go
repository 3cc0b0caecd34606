// Package propgen generates .properties files from a template for each
// iteration of an outer/inner simulation loop.
//
// # Templates
//
// A template is a plain properties file whose values may carry placeholder
// tokens:
//
//	schedule.adjustment.parameters.file = BASEPATHFile.xls
//	max.hh.id = 150000
//	simulated.vehicle.dat.file = BASEPATHLOOP_PAIR/output_vehicle_#.dat
//	inner.loop.abm.data.folder = BASEPATHOUTER/abmData
//
// BASEPATH becomes the caller's base path, LOOP_PAIR becomes
// outer<N>/inner<M>, OUTER becomes outer<N> and # becomes the inner index.
//
// # Usage
//
//	gen, err := propgen.New("model.properties", map[string]string{
//	    "basepath":  "/data/run/",
//	    "max.hh.id": "200000",
//	})
//	if err != nil {
//	    return err
//	}
//
//	if err := gen.Create("outer0/inner1/model.properties", "0", "1"); err != nil {
//	    return err
//	}
//
// # Key policies
//
// Some keys name inputs that do not exist yet on the first inner iteration.
// Those keys carry an explicit policy instead of being inferred from their
// tokens:
//
//	gen, err := propgen.New(path, overrides, propgen.WithPolicies(propgen.Policies{
//	    "simulated.vehicle.dat.file": {ClearOnZero: true},
//	}))
//
// A Generator never mutates its template. Resolve returns a fresh
// ParameterSet on every call.
package propgen
