package scenes

// RegisterShared installs the scene set common to every template. The
// template's own Game scene is registered afterwards by its package.
func RegisterShared(env *Env) {
	env.Control.Register(NewBoot(env))
	env.Control.Register(NewPreload(env))
	env.Control.Register(NewSplash(env))
	env.Control.Register(NewHowTo(env))
	env.Control.Register(NewDataCapture(env))
	env.Control.Register(NewEnd(env))
}
