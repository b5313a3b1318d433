// Package comobj binds the automation object through COM.
//
// An Apartment initializes a single-threaded apartment on the calling OS
// thread and instantiates the object by CLSID. The Object it returns
// implements dispatch.Object: names are translated with GetIDsOfNames and
// calls go through IDispatch::Invoke as plain method calls using the user
// default locale.
//
// Arguments cross the boundary as VARIANTs. Output parameters are passed
// as VT_BYREF|VT_VARIANT pointing at zeroed VARIANT slots owned by this
// package; after the call each slot is read back into its variant.Value
// and cleared.
//
// Everything here must run on the thread that called Enter. The package
// builds on every platform, but outside Windows Enter always fails with
// ErrUnsupportedPlatform.
package comobj
